package model

// EndpointInfo describes one public endpoint of the catalog
type EndpointInfo struct {
	URL         string            `json:"url"`
	Method      string            `json:"method"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters,omitempty"`
}

// CatalogResponse is returned by the API root
type CatalogResponse struct {
	Status      string                  `json:"status"`
	Name        string                  `json:"name"`
	Version     string                  `json:"version"`
	Description string                  `json:"description"`
	DataSource  string                  `json:"data_source"`
	Endpoints   map[string]EndpointInfo `json:"endpoints"`
}
