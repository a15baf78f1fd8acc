package views

// CounterID is the key of the one counter record.
const CounterID = "0"

type Record struct {
	ID    string `json:"id" dynamodbav:"id"`
	Views int64  `json:"views" dynamodbav:"views"`
}

func NewRecord(views int64) Record {
	return Record{ID: CounterID, Views: views}
}
