package engine

import "github.com/stretchr/testify/mock"

var (
	anyArg    = mock.Anything
	anyRecipe = mock.AnythingOfType("model.Recipe")
)
