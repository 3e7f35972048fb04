package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"weather-search/internal/domain/model"
	"weather-search/internal/domain/usecase/history"
	"weather-search/pkg/log"
	"weather-search/pkg/msg"
)

type HistoryProcessor struct {
	historyUseCase history.UseCase
}

func NewHistoryProcessor(historyUseCase history.UseCase) *HistoryProcessor {
	return &HistoryProcessor{
		historyUseCase: historyUseCase,
	}
}

// HandleMessage implements the sqs.Handler interface. Malformed or incomplete messages are
// acknowledged and dropped since redelivery cannot fix them.
func (p *HistoryProcessor) HandleMessage(ctx context.Context, message *types.Message) error {
	if message == nil || message.Body == nil {
		return fmt.Errorf("received nil message or message body")
	}

	messageID := ""
	if message.MessageId != nil {
		messageID = *message.MessageId
	}

	var record model.SearchRecordMessage
	if err := json.Unmarshal([]byte(*message.Body), &record); err != nil {
		log.Warn(msg.GetMessage("history.message-invalid", messageID, err), zap.String("message_id", messageID))
		return nil
	}

	if err := p.historyUseCase.SaveHistory(ctx, record); err != nil {
		if errors.Is(err, model.ErrValidation) {
			log.Warn(msg.GetMessage("history.message-invalid", messageID, err), zap.String("message_id", messageID))
			return nil
		}
		return fmt.Errorf("failed to save search of %s: %w", record.CityName, err)
	}

	log.Debug("history message processed", zap.String("message_id", messageID), zap.String("city", record.CityName))
	return nil
}
