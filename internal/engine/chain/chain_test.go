package chain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
	"go.trai.ch/assetd/internal/core/ports/mocks"
	"go.trai.ch/assetd/internal/engine/chain"
	"go.uber.org/mock/gomock"
)

// recordingResolver appends its name to a shared trace and delegates.
type recordingResolver struct {
	name  string
	trace *[]string
}

func (r recordingResolver) Resolve(
	ctx context.Context, req domain.ResourceRequest, next ports.ResolverChain,
) (*domain.Resource, error) {
	*r.trace = append(*r.trace, r.name)
	return next.Resolve(ctx, req)
}

func (r recordingResolver) ResolveURLPath(ctx context.Context, p string, next ports.ResolverChain) (string, error) {
	*r.trace = append(*r.trace, r.name)
	return next.ResolveURLPath(ctx, p)
}

func TestChain_EmptyResolvesNotFound(t *testing.T) {
	c := chain.New(nil, nil)

	res, err := c.Resolve(context.Background(), request(t, "alpha/app.js"))
	require.NoError(t, err)
	assert.Nil(t, res)

	url, err := c.ResolveURLPath(context.Background(), "alpha/app.js")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestChain_WalksResolversInOrder(t *testing.T) {
	var trace []string
	c := chain.New([]ports.Resolver{
		recordingResolver{name: "first", trace: &trace},
		recordingResolver{name: "second", trace: &trace},
		recordingResolver{name: "third", trace: &trace},
	}, nil)

	res, err := c.Resolve(context.Background(), request(t, "alpha/app.js"))
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, []string{"first", "second", "third"}, trace)
}

func TestChain_ResolverShortCircuits(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockResolver(ctrl)
	second := mocks.NewMockResolver(ctrl)

	want := &domain.Resource{Path: "alpha/app.js", Content: []byte("x")}
	first.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(want, nil)

	c := chain.New([]ports.Resolver{first, second}, nil)

	res, err := c.Resolve(context.Background(), request(t, "alpha/app.js"))
	require.NoError(t, err)
	assert.Same(t, want, res)
}

func TestChain_NormalizesRequestPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockResolver(ctrl)

	r.EXPECT().
		Resolve(gomock.Any(), domain.ResourceRequest{Path: "alpha/app.js"}, gomock.Any()).
		Return(nil, nil)

	c := chain.New([]ports.Resolver{r}, nil)

	res, err := c.Resolve(context.Background(), domain.ResourceRequest{Path: "/alpha/./app.js"})
	require.NoError(t, err)
	assert.Nil(t, res)

	res, err = c.Resolve(context.Background(), domain.ResourceRequest{Path: "../secret"})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestChain_AppliesTransformersInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockResolver(ctrl)
	upper := mocks.NewMockTransformer(ctrl)
	suffix := mocks.NewMockTransformer(ctrl)

	base := &domain.Resource{Path: "alpha/app.txt", Content: []byte("a")}
	r.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(base, nil)

	gomock.InOrder(
		upper.EXPECT().Transform(gomock.Any(), gomock.Any(), base, gomock.Any()).
			Return(base.WithContent([]byte("A")), nil),
		suffix.EXPECT().Transform(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.ResourceRequest, res *domain.Resource, _ ports.ResolverChain) (*domain.Resource, error) {
				return res.WithContent(append(res.Content, '!')), nil
			}),
	)

	c := chain.New([]ports.Resolver{r}, []ports.Transformer{upper, suffix})

	res, err := c.Resolve(context.Background(), request(t, "alpha/app.txt"))
	require.NoError(t, err)
	assert.Equal(t, "A!", string(res.Content))
	assert.Equal(t, "a", string(base.Content))
}

func TestChain_RejectsTransformerChangingPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockResolver(ctrl)
	tr := mocks.NewMockTransformer(ctrl)

	base := &domain.Resource{Path: "alpha/app.txt"}
	r.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(base, nil)
	tr.EXPECT().Transform(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.Resource{Path: "alpha/other.txt"}, nil)

	c := chain.New([]ports.Resolver{r}, []ports.Transformer{tr})

	res, err := c.Resolve(context.Background(), request(t, "alpha/app.txt"))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrTransformFailed)
}

func TestChain_TransformerErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockResolver(ctrl)
	tr := mocks.NewMockTransformer(ctrl)

	boom := errors.New("boom")
	r.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.Resource{Path: "alpha/a"}, nil)
	tr.EXPECT().Transform(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, boom)

	c := chain.New([]ports.Resolver{r}, []ports.Transformer{tr})

	_, err := c.Resolve(context.Background(), request(t, "alpha/a"))
	assert.ErrorIs(t, err, boom)
}

func TestChain_NotFoundSkipsTransformers(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockResolver(ctrl)
	tr := mocks.NewMockTransformer(ctrl)

	r.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	c := chain.New([]ports.Resolver{r}, []ports.Transformer{tr})

	res, err := c.Resolve(context.Background(), request(t, "alpha/a"))
	require.NoError(t, err)
	assert.Nil(t, res)
}
