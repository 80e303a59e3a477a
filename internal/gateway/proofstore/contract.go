//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=proofstore_test
package proofstore

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type client interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}
