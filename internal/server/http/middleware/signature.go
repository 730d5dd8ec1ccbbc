package middleware

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Signature headers sent by the platform on every webhook delivery.
const (
	SignatureHeader = "X-Signature-Ed25519"
	TimestampHeader = "X-Signature-Timestamp"
)

// VerifySignature rejects webhook deliveries whose ed25519 signature over
// timestamp+body does not verify against the platform public key. The body
// is restored for downstream handlers.
func VerifySignature(publicKey ed25519.PublicKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		signature, err := hex.DecodeString(c.GetHeader(SignatureHeader))
		if err != nil || len(signature) != ed25519.SignatureSize {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		timestamp := c.GetHeader(TimestampHeader)
		if timestamp == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		signed := make([]byte, 0, len(timestamp)+len(body))
		signed = append(signed, timestamp...)
		signed = append(signed, body...)

		if !ed25519.Verify(publicKey, signed, signature) {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Next()
	}
}
