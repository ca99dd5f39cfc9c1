package objstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratewatch/ratewatch/pkg/types"
)

type fakeS3 struct {
	body  []byte
	err   error
	calls int
	input *s3.GetObjectInput
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.calls++
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.body))}, nil
}

func TestBuildGetObjectInput(t *testing.T) {
	tests := []struct {
		name   string
		bucket string
		key    string
		want   bool
	}{
		{"both present", "currency.prebid.org", "latest.json", true},
		{"missing bucket", "", "latest.json", false},
		{"missing key", "currency.prebid.org", "", false},
		{"both missing", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := BuildGetObjectInput(tt.bucket, tt.key)
			if !tt.want {
				assert.Nil(t, input)
				return
			}
			require.NotNil(t, input)
			assert.Equal(t, tt.bucket, *input.Bucket)
			assert.Equal(t, tt.key, *input.Key)
		})
	}
}

func TestFetch(t *testing.T) {
	client := &fakeS3{body: []byte(`{"dataAsOf":"2026-08-28"}`)}
	f := NewWithClient(client)

	body, err := f.Fetch(context.Background(), "currency.prebid.org", "latest.json")

	require.NoError(t, err)
	assert.Equal(t, `{"dataAsOf":"2026-08-28"}`, string(body))
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "currency.prebid.org", *client.input.Bucket)
	assert.Equal(t, "latest.json", *client.input.Key)
}

func TestFetchMissingLocation(t *testing.T) {
	client := &fakeS3{}
	f := NewWithClient(client)

	body, err := f.Fetch(context.Background(), "", "latest.json")

	assert.Nil(t, body)
	require.Error(t, err)
	assert.True(t, types.IsValidationError(err))
	assert.Zero(t, client.calls, "no request issued for a misconfigured location")
}

func TestFetchServiceError(t *testing.T) {
	client := &fakeS3{err: errors.New("access denied")}
	f := NewWithClient(client)

	body, err := f.Fetch(context.Background(), "currency.prebid.org", "latest.json")

	assert.Nil(t, body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}
