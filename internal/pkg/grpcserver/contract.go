//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=grpcserver_test
package grpcserver

import (
	"context"
)

type pinger interface {
	Ping(ctx context.Context) error
}
