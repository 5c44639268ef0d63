package health

import (
	"github.com/statops/tabstat/pkg/api/types/misc/rfctime"
)

type Response struct {
	Status    string          `json:"status"`
	Service   string          `json:"service"`
	Version   string          `json:"version"`
	Timestamp rfctime.RFC3339 `json:"timestamp"`
}

func (r Response) Equal(o Response) bool {
	return r.Status == o.Status &&
		r.Service == o.Service &&
		r.Version == o.Version &&
		r.Timestamp.Equal(o.Timestamp)
}
