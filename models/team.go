package models

// Team describes a multi-resource staffing requirement: at least
// MinResourceCount of the listed workers must be simultaneously free, and the
// overlapping portion of their working windows must cover at least
// MinOverlapPercentage of the narrowest open window that day.
type Team struct {
	WorkerIDs            []string `json:"workerIds" binding:"required,min=1"`
	MinResourceCount     int      `json:"minResourceCount" binding:"required,gte=1"`
	MinOverlapPercentage float64  `json:"minOverlapPercentage" binding:"gte=0,lte=100"`
}
