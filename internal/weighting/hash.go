package weighting

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/sells-group/bioscore-cli/internal/model"
)

// ConfigHash returns a short SHA-256 hash of a weight configuration, stored
// alongside evaluation records so results can be traced to the exact weights
// that produced them.
func ConfigHash(w model.WeightConfig) string {
	data, err := json.Marshal(w)
	if err != nil {
		return ""
	}
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:16]) // 32 hex chars
}
