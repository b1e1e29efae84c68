package probe

import (
	"fmt"

	"github.com/muurk/stationup/internal/version"
)

// BuildRequest renders the fixed HTTP/1.0 GET request. HTTP/1.0 keeps
// the read loop simple: the server closes the connection after the
// response, so end-of-response is end-of-stream.
func BuildRequest(host string, port int, path string) string {
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("GET %s HTTP/1.0\r\n"+
		"Host: %s:%d\r\n"+
		"User-Agent: stationup/%s\r\n"+
		"\r\n",
		path, host, port, version.Version)
}
