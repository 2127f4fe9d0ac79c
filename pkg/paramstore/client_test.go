package paramstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a simple fake implementing ssmAPI for tests.
type fakeAPI struct {
	getOut   *ssm.GetParameterOutput
	getErr   error
	getInput *ssm.GetParameterInput

	pages   []*ssm.GetParametersByPathOutput
	pathErr error
	tokens  []*string
}

func (f *fakeAPI) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.getInput = in
	return f.getOut, f.getErr
}

func (f *fakeAPI) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.pathErr != nil {
		return nil, f.pathErr
	}
	f.tokens = append(f.tokens, in.NextToken)
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

func TestGetParameter_HappyPath(t *testing.T) {
	api := &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{
		Name: aws.String("p"), Value: aws.String("sk-test"), Type: types.ParameterTypeSecureString,
	}}}
	client, err := New(api)
	require.NoError(t, err)

	v, err := client.GetParameter(context.Background(), " p ")
	require.NoError(t, err)
	require.Equal(t, "sk-test", v)
	require.Equal(t, "p", aws.ToString(api.getInput.Name))
	require.True(t, aws.ToBool(api.getInput.WithDecryption))
}

func TestGetParameter_Errors(t *testing.T) {
	t.Run("missing value", func(t *testing.T) {
		client, _ := New(&fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: aws.String("p")}}})
		_, err := client.GetParameter(context.Background(), "p")
		require.ErrorContains(t, err, "missing value")
	})

	t.Run("api error", func(t *testing.T) {
		client, _ := New(&fakeAPI{getErr: errors.New("boom")})
		_, err := client.GetParameter(context.Background(), "p")
		require.ErrorContains(t, err, "boom")
	})

	t.Run("not initialized", func(t *testing.T) {
		_, err := (&Client{}).GetParameter(context.Background(), "p")
		require.ErrorContains(t, err, "not initialized")
	})

	t.Run("empty name", func(t *testing.T) {
		client, _ := New(&fakeAPI{})
		_, err := client.GetParameter(context.Background(), "  ")
		require.ErrorContains(t, err, "required")
	})

	t.Run("nil api", func(t *testing.T) {
		_, err := New(nil)
		require.ErrorContains(t, err, "must not be nil")
	})
}

func TestGetByPath_Paginates(t *testing.T) {
	api := &fakeAPI{pages: []*ssm.GetParametersByPathOutput{
		{
			Parameters: []types.Parameter{
				{Name: aws.String("/assistant-kit/llm/openai/api_key"), Value: aws.String("sk-1")},
			},
			NextToken: aws.String("page-2"),
		},
		{
			Parameters: []types.Parameter{
				{Name: aws.String("/assistant-kit/redis/password"), Value: aws.String("hunter2")},
				{Name: aws.String("/assistant-kit/broken")},
			},
		},
	}}
	client, err := New(api)
	require.NoError(t, err)

	params, err := client.GetByPath(context.Background(), "/assistant-kit")
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"llm/openai/api_key": "sk-1",
		"redis/password":     "hunter2",
	}, params)
	require.Len(t, api.tokens, 2)
	require.Nil(t, api.tokens[0])
	require.Equal(t, "page-2", aws.ToString(api.tokens[1]))
}

func TestGetByPath_Error(t *testing.T) {
	client, _ := New(&fakeAPI{pathErr: errors.New("denied")})
	_, err := client.GetByPath(context.Background(), "/assistant-kit/")
	require.ErrorContains(t, err, "denied")
}
