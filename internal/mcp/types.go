package mcp

// ListModesInput is the input for the list_modes tool.
type ListModesInput struct {
	Output string `json:"output,omitempty" jsonschema:"Display output name (default: primary output)"`
}

// ModeSummary describes one resolution catalog entry.
type ModeSummary struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Interlaced  bool    `json:"interlaced"`
	Stereo3D    bool    `json:"stereo_3d"`
	RefreshRate float64 `json:"refresh_rate"`
	Description string  `json:"description"`
}

// ListModesOutput is the output for the list_modes tool.
type ListModesOutput struct {
	DesktopMode string        `json:"desktop_mode"`
	Modes       []ModeSummary `json:"modes"`
}

// ListRefreshRatesInput is the input for the list_refresh_rates tool.
type ListRefreshRatesInput struct {
	Width      int    `json:"width" jsonschema:"required,Mode width in pixels"`
	Height     int    `json:"height" jsonschema:"required,Mode height in pixels"`
	Interlaced bool   `json:"interlaced,omitempty" jsonschema:"Match interlaced modes"`
	Output     string `json:"output,omitempty" jsonschema:"Display output name (default: primary output)"`
}

// ListRefreshRatesOutput is the output for the list_refresh_rates tool.
type ListRefreshRatesOutput struct {
	Rates       []float64 `json:"rates"`
	DefaultRate float64   `json:"default_rate"`
}

// HDRStatusInput is the input for the get_hdr_status tool.
type HDRStatusInput struct{}

// HDRStatusOutput is the output for the get_hdr_status tool.
type HDRStatusOutput struct {
	Status  string `json:"status"`
	Enabled bool   `json:"enabled"`
}

// ToggleHDRInput is the input for the toggle_hdr tool.
type ToggleHDRInput struct{}

// ToggleHDROutput is the output for the toggle_hdr tool.
type ToggleHDROutput struct {
	Status string `json:"status"`
}
