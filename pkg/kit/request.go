package kit

import (
	"mime"
	"net/http"
)

// IsForm reports whether r carries an HTML form body.
func IsForm(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/x-www-form-urlencoded"
}
