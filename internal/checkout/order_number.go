package checkout

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const (
	orderNumberPrefix   = "BP"
	orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	orderNumberSuffix   = 5
)

// NewOrderNumber builds a unique order identifier: prefix, millisecond
// timestamp, five random uppercase alphanumerics. Not a secret, just
// collision-proof for any realistic order volume.
func NewOrderNumber() string {
	var b strings.Builder
	b.WriteString(orderNumberPrefix)
	b.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 10))
	for i := 0; i < orderNumberSuffix; i++ {
		b.WriteByte(orderNumberAlphabet[rand.Intn(len(orderNumberAlphabet))])
	}
	return b.String()
}
