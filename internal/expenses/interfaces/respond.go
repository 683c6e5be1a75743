package interfaces

import (
	"net/http"
	"strconv"
)

type respondJSONFunc func(w http.ResponseWriter, status int, payload interface{})

func parseID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
