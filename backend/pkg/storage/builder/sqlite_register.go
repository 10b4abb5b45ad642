package builder

import (
	"github.com/lamassuiot/authping/engines/storage/sqlite"
)

func init() {
	sqlite.Register()
}
