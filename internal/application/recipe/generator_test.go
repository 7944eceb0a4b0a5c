package recipe

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/flavorforge/recipeai/internal/domain/recipe"
	"github.com/flavorforge/recipeai/internal/infrastructure/http/apiclient"
	"github.com/flavorforge/recipeai/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
)

type GeneratorTestSuite struct {
	suite.Suite
	api       *testutils.MockRecipeAPI
	generator *Generator
	ctx       context.Context
}

func (s *GeneratorTestSuite) SetupTest() {
	s.api = new(testutils.MockRecipeAPI)
	s.generator = NewGenerator(s.api, zaptest.NewLogger(s.T()))
	s.ctx = context.Background()
}

func (s *GeneratorTestSuite) TestEmptyIngredientsNeverCallsBackend() {
	state := s.generator.Generate(s.ctx, recipe.GenerationRequest{})

	assert.Equal(s.T(), "please add at least one ingredient", state.Error)
	assert.False(s.T(), state.Loading)
	assert.False(s.T(), state.Success)
	assert.Nil(s.T(), state.Recipe)
	s.api.AssertNotCalled(s.T(), "Generate", mock.Anything, mock.Anything)
}

func (s *GeneratorTestSuite) TestSuccess() {
	req := recipe.GenerationRequest{Ingredients: []string{"rice", "egg"}}
	generated := testutils.NewRecipeBuilder().WithTitle("Egg Fried Rice").Build()
	s.api.On("Generate", s.ctx, req).Return(&generated, nil).Once()

	var seen []GeneratorState
	s.generator.Subscribe(func(st GeneratorState) { seen = append(seen, st) })

	state := s.generator.Generate(s.ctx, req)

	require.True(s.T(), state.Success)
	assert.Equal(s.T(), "Egg Fried Rice", state.Recipe.Title)
	assert.Empty(s.T(), state.Error)
	assert.False(s.T(), state.Loading)

	require.Len(s.T(), seen, 2)
	assert.True(s.T(), seen[0].Loading)
	assert.Nil(s.T(), seen[0].Recipe)
	assert.Equal(s.T(), state, seen[1])
	s.api.AssertExpectations(s.T())
}

func (s *GeneratorTestSuite) TestFailureMessages() {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"api error", &apiclient.APIError{StatusCode: 503, Message: "LLM service unavailable"}, "LLM service unavailable"},
		{"plain error", errors.New("connection reset"), "connection reset"},
		{"blank error", errors.New(""), msgGenerateFailed},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			req := recipe.GenerationRequest{Ingredients: []string{"tofu"}}
			previous := testutils.NewRecipeBuilder().Build()
			s.api.On("Generate", s.ctx, req).Return(&previous, nil).Once()
			s.generator.Generate(s.ctx, req)

			s.api.On("Generate", s.ctx, req).Return(nil, tt.err).Once()
			state := s.generator.Generate(s.ctx, req)

			assert.Equal(s.T(), tt.want, state.Error)
			assert.Nil(s.T(), state.Recipe, "failure clears the previous recipe")
			assert.False(s.T(), state.Success)
		})
	}
}

func (s *GeneratorTestSuite) TestLatestRequestWins() {
	slow := recipe.GenerationRequest{Ingredients: []string{"beef"}}
	fast := recipe.GenerationRequest{Ingredients: []string{"tofu"}}
	slowRecipe := testutils.NewRecipeBuilder().WithTitle("Beef Stew").Build()
	fastRecipe := testutils.NewRecipeBuilder().WithTitle("Tofu Bowl").Build()

	release := make(chan struct{})
	started := make(chan struct{})
	s.api.On("Generate", mock.Anything, slow).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&slowRecipe, nil)
	s.api.On("Generate", mock.Anything, fast).Return(&fastRecipe, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.generator.Generate(s.ctx, slow)
	}()
	<-started

	state := s.generator.Generate(s.ctx, fast)
	assert.Equal(s.T(), "Tofu Bowl", state.Recipe.Title)

	close(release)
	wg.Wait()

	assert.Equal(s.T(), "Tofu Bowl", s.generator.State().Recipe.Title)
}

func (s *GeneratorTestSuite) TestResetDiscardsInFlightResult() {
	req := recipe.GenerationRequest{Ingredients: []string{"rice"}}
	generated := testutils.NewRecipeBuilder().Build()

	release := make(chan struct{})
	s.api.On("Generate", mock.Anything, req).
		WaitUntil(timeAfterChan(release)).
		Return(&generated, nil)

	done := make(chan GeneratorState)
	go func() { done <- s.generator.Generate(s.ctx, req) }()

	assert.Eventually(s.T(), func() bool { return s.generator.State().Loading }, time.Second, time.Millisecond)
	s.generator.Reset()
	close(release)
	<-done

	assert.Equal(s.T(), GeneratorState{}, s.generator.State())
}

func (s *GeneratorTestSuite) TestResetIsIdempotent() {
	req := recipe.GenerationRequest{Ingredients: []string{"rice"}}
	s.api.On("Generate", s.ctx, req).Return(nil, errors.New("boom"))
	s.generator.Generate(s.ctx, req)

	s.generator.Reset()
	first := s.generator.State()
	s.generator.Reset()

	assert.Equal(s.T(), GeneratorState{}, first)
	assert.Equal(s.T(), first, s.generator.State())
}

func (s *GeneratorTestSuite) TestClearError() {
	s.generator.Generate(s.ctx, recipe.GenerationRequest{})
	s.generator.ClearError()
	assert.Empty(s.T(), s.generator.State().Error)
}

func TestGeneratorTestSuite(t *testing.T) {
	suite.Run(t, new(GeneratorTestSuite))
}

// timeAfterChan adapts a release channel to mock's WaitUntil
func timeAfterChan(release <-chan struct{}) <-chan time.Time {
	ch := make(chan time.Time)
	go func() {
		<-release
		close(ch)
	}()
	return ch
}
