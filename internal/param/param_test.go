package param

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSSM struct {
	values map[string]string
	calls  []string
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	name := aws.ToString(in.Name)
	f.calls = append(f.calls, name)
	value, ok := f.values[name]
	if !ok {
		return nil, errors.New("ParameterNotFound")
	}
	if !aws.ToBool(in.WithDecryption) {
		return nil, errors.New("expected decryption")
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: in.Name, Value: aws.String(value)}}, nil
}

func TestParameterStoreFetcher(t *testing.T) {
	fake := &fakeSSM{values: map[string]string{"/getimg/key": "from-ssm"}}
	fetcher := &ParameterStoreFetcher{client: fake}

	value, err := fetcher.Fetch(context.Background(), "/getimg/key")
	require.NoError(t, err)
	assert.Equal(t, "from-ssm", value)

	_, err = fetcher.Fetch(context.Background(), "/getimg/other")
	assert.Error(t, err)
}

func TestResolveKey(t *testing.T) {
	ctx := context.Background()
	fake := &fakeSSM{values: map[string]string{"/getimg/key": "from-ssm", "/getimg/empty": ""}}
	fetcher := &ParameterStoreFetcher{client: fake}

	key, err := ResolveKey(ctx, fetcher, "explicit", "/getimg/key")
	require.NoError(t, err)
	assert.Equal(t, "explicit", key)
	assert.Empty(t, fake.calls)

	key, err = ResolveKey(ctx, fetcher, "", "/getimg/key")
	require.NoError(t, err)
	assert.Equal(t, "from-ssm", key)

	_, err = ResolveKey(ctx, fetcher, "", "")
	assert.ErrorIs(t, err, ErrMissingKey)

	_, err = ResolveKey(ctx, fetcher, "", "/getimg/empty")
	assert.ErrorIs(t, err, ErrMissingKey)

	_, err = ResolveKey(ctx, fetcher, "", "/getimg/missing")
	assert.ErrorContains(t, err, "/getimg/missing")
}
