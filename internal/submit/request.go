package submit

// DatabaseKind is the storage backend the service is asked to use.
const DatabaseKind = "sqlite"

// TasksPath is appended to the resolved base address.
const TasksPath = "/tasks"

// Request is the JSON body of a task submission.
type Request struct {
	URL    string `json:"url"`
	DBType string `json:"db_type"`
}

// NewRequest builds the submission body for url.
func NewRequest(url string) Request {
	return Request{URL: url, DBType: DatabaseKind}
}
