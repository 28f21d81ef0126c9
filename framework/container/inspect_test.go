package container_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/framework/container"
)

func TestDescribe_BuildsTreeWithoutConstructing(t *testing.T) {
	calls := 0
	c := container.New()
	container.Register[*bottom](c, func() *bottom { calls++; return &bottom{} })
	container.Register[*middle](c, newMiddle)
	container.Register[*top](c, newTop)

	node, err := c.Describe(reflect.TypeFor[*top]())
	require.NoError(t, err)
	assert.Zero(t, calls)

	assert.Equal(t, "*container_test.top", node.Name)
	require.Len(t, node.Dependencies, 1)
	require.Len(t, node.Dependencies[0].Dependencies, 1)
	assert.Equal(t, reflect.TypeFor[*bottom](), node.Dependencies[0].Dependencies[0].Contract)
	assert.Contains(t, node.Implementation, "newTop")
}

func TestDescribe_TypeRegistrationHasNoConstructorName(t *testing.T) {
	c := container.New()
	container.Register[Logger](c, reflect.TypeFor[*consoleLogger]())

	node, err := c.Describe(loggerType())
	require.NoError(t, err)
	assert.Equal(t, "*container_test.consoleLogger", node.Implementation)
	assert.Empty(t, node.Dependencies)
}

func TestNode_String_IndentsByDepth(t *testing.T) {
	c := container.New()
	container.Register[Logger](c, reflect.TypeFor[*consoleLogger]())
	container.Register[*userService](c, newUserService)

	node, err := c.Describe(reflect.TypeFor[*userService]())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(node.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "*container_test.userService => *container_test.userService via "))
	assert.Equal(t, "  container_test.Logger => *container_test.consoleLogger", lines[1])
}

func TestDescribe_Errors(t *testing.T) {
	c := container.New()
	container.Register[*a](c, newA)
	container.Register[*b](c, newB)
	container.Register[*userService](c, newUserService)
	container.Register[*top](c, 42)

	_, err := c.Describe(reflect.TypeFor[*a]())
	var cycle *container.CycleError
	assert.ErrorAs(t, err, &cycle)

	_, err = c.Describe(reflect.TypeFor[*userService]())
	var lookup *container.LookupError
	assert.ErrorAs(t, err, &lookup)

	_, err = c.Describe(reflect.TypeFor[*top]())
	assert.ErrorIs(t, err, container.ErrNoConstructor)

	_, err = c.Describe(nil)
	assert.ErrorAs(t, err, &lookup)

	c = container.New()
	container.Register[Logger](c, reflect.TypeFor[valueLogger]())
	_, err = c.Describe(loggerType())
	var construction *container.ConstructionError
	assert.ErrorAs(t, err, &construction)
	assert.ErrorIs(t, err, container.ErrNotAssignable)
}

func TestDescribe_InterfaceResultCheckedOnlyWhenBuilt(t *testing.T) {
	c := container.New()
	container.Register[Logger](c, func() Logger { return &consoleLogger{} })

	_, err := c.Describe(loggerType())
	assert.NoError(t, err)
}

func TestDescribe_DeferredContractIsLeaf(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	p := &deferredProvider{}
	require.NoError(t, reg.Register(p))

	node, err := c.Describe(reflect.TypeFor[*userService]())
	require.NoError(t, err)
	assert.Contains(t, node.Implementation, "deferred")
	assert.Zero(t, p.registerCalled)
}

func TestValidate_NilWhenEverythingResolves(t *testing.T) {
	c := container.New()
	container.Register[Logger](c, reflect.TypeFor[*consoleLogger]())
	container.Register[*userService](c, newUserService)

	assert.NoError(t, c.Validate())
}

func TestValidate_JoinsEveryFailure(t *testing.T) {
	c := container.New()
	container.Register[*a](c, newA)
	container.Register[*b](c, newB)
	container.Register[*userService](c, newUserService)
	container.Register[Logger](c, reflect.TypeFor[valueLogger]())

	err := c.Validate()
	require.Error(t, err)

	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	// *a and *b both hit the cycle, Logger and *userService hit the
	// unassignable Logger implementation
	assert.Len(t, joined.Unwrap(), 4)
	assert.ErrorIs(t, err, container.ErrNotAssignable)
}
