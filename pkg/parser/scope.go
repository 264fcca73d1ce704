package parser

// TypedefContext is the scoped registry of names usable as type
// specifiers. It is the mechanism that disambiguates the
// context-sensitive parts of the C grammar: declarations, casts, and
// sizeof all consult it before committing to a type interpretation.
type TypedefContext struct {
	frames []map[string]bool
}

// NewTypedefContext returns a context with a single file-scope frame.
func NewTypedefContext() *TypedefContext {
	return &TypedefContext{frames: []map[string]bool{{}}}
}

// Declare registers name as a type name in the innermost scope.
func (c *TypedefContext) Declare(name string) {
	c.frames[len(c.frames)-1][name] = true
}

// IsTypeName reports whether name is visible as a type name in any
// active scope, innermost first.
func (c *TypedefContext) IsTypeName(name string) bool {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if c.frames[i][name] {
			return true
		}
	}
	return false
}

// PushScope enters a block scope. Typedef names declared inside are
// discarded by the matching PopScope.
func (c *TypedefContext) PushScope() {
	c.frames = append(c.frames, map[string]bool{})
}

// PopScope leaves the innermost block scope. The file scope is never
// popped.
func (c *TypedefContext) PopScope() {
	if len(c.frames) > 1 {
		c.frames = c.frames[:len(c.frames)-1]
	}
}

// Depth returns the number of active scope frames.
func (c *TypedefContext) Depth() int {
	return len(c.frames)
}
