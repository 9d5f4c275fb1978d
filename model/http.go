package model

type PartSummary struct {
	Name   string `json:"name"`
	Events int    `json:"events"`
	Low    int    `json:"low"`
	High   int    `json:"high"`
	Voices int    `json:"voices"`
}

type AnalyzeRequestBody struct {
	Path         string    `json:"path"`
	VoiceNum     int       `json:"voice_num"`
	Distribution []float64 `json:"voice_distribution"`
}

type AnalyzeResponse struct {
	Parts        []PartSummary `json:"parts"`
	Groups       []int         `json:"groups"`
	Combinations int           `json:"combinations"`
}

type FileListResponse struct {
	Files []string `json:"files"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
