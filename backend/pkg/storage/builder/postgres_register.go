package builder

import (
	postgres "github.com/lamassuiot/authping/engines/storage/postgres"
)

func init() {
	postgres.Register()
}
