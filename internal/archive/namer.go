package archive

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/frzanini/downloadSiegHub/internal/dfe"
)

// FileName produces the deterministic archive name for a successfully
// extracted record. Event records additionally carry the event type and
// sequence so multiple events on the same key never collide.
func FileName(rec dfe.Record) string {
	if rec.IsEvent {
		return fmt.Sprintf("%s_%s_%s_%s.xml",
			rec.AccessKey, rec.DocumentKind, rec.EventType, rec.EventSequence)
	}
	return fmt.Sprintf("%s_%s.xml", rec.AccessKey, rec.DocumentKind)
}

// TempFileName produces a collision-resistant name for a blob whose record
// carries an error: a hash over the batch counter and the current time.
func TempFileName(counter int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d_%d", counter, time.Now().UnixNano())))
	return fmt.Sprintf("temp_%s.xml", hex.EncodeToString(sum[:]))
}
