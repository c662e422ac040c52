package middleware

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// DefaultBrotliMinLength is the smallest JSON body that gets compressed.
// Single entities and error envelopes stay below it; member and page
// listings usually do not.
const DefaultBrotliMinLength = 1024

// Brotli compresses JSON bodies of GET responses for clients that accept "br".
func Brotli() gin.HandlerFunc {
	return BrotliLevel(brotli.DefaultCompression, DefaultBrotliMinLength)
}

// BrotliLevel is Brotli with an explicit quality and threshold.
func BrotliLevel(quality, minLength int) gin.HandlerFunc {
	if quality < brotli.BestSpeed || quality > brotli.BestCompression {
		quality = brotli.DefaultCompression
	}
	if minLength <= 0 {
		minLength = DefaultBrotliMinLength
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")
		jw := &jsonBrotliWriter{ResponseWriter: c.Writer, quality: quality, minLength: minLength}
		c.Writer = jw
		c.Next()

		if err := jw.finish(); err != nil {
			_ = c.Error(err)
		}
	}
}

// jsonBrotliWriter holds the body back until minLength bytes are known, then
// either compresses (JSON) or passes everything through unchanged.
type jsonBrotliWriter struct {
	gin.ResponseWriter
	quality     int
	minLength   int
	pending     []byte
	br          *brotli.Writer
	passthrough bool
}

func (w *jsonBrotliWriter) Write(p []byte) (int, error) {
	switch {
	case w.br != nil:
		return w.br.Write(p)
	case w.passthrough:
		return w.ResponseWriter.Write(p)
	}

	w.pending = append(w.pending, p...)
	if len(w.pending) < w.minLength {
		return len(p), nil
	}

	if isJSON(w.Header().Get("Content-Type")) {
		w.Header().Set("Content-Encoding", "br")
		w.Header().Del("Content-Length")
		w.br = brotli.NewWriterLevel(w.ResponseWriter, w.quality)
	} else {
		w.passthrough = true
	}
	if err := w.release(); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *jsonBrotliWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *jsonBrotliWriter) release() error {
	pending := w.pending
	w.pending = nil
	if len(pending) == 0 {
		return nil
	}

	var err error
	if w.br != nil {
		_, err = w.br.Write(pending)
	} else {
		_, err = w.ResponseWriter.Write(pending)
	}
	return err
}

// finish flushes a body that never reached the threshold, or closes the
// brotli stream.
func (w *jsonBrotliWriter) finish() error {
	if w.br != nil {
		return w.br.Close()
	}
	return w.release()
}

func isJSON(contentType string) bool {
	return strings.HasPrefix(strings.TrimSpace(contentType), gin.MIMEJSON)
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		name, params, _ := strings.Cut(enc, ";")
		if strings.EqualFold(strings.TrimSpace(name), "br") && strings.TrimSpace(params) != "q=0" {
			return true
		}
	}
	return false
}
