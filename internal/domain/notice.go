package domain

// NoticeDatasetReplaced is sent to viewers after a new dataset is swapped in.
const NoticeDatasetReplaced = "dataset_replaced"

// DatasetNotice is the websocket message announcing a dataset change.
type DatasetNotice struct {
	Type      string `json:"type"`
	DatasetID string `json:"dataset_id"`
	Source    string `json:"source"`
	Records   int    `json:"records"`
	Ts        int64  `json:"ts"` // Unix milliseconds
}
