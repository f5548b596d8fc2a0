// Package arena is the checked counterpart to package alias. Values live in slots owned by an
// Arena and are reached through small generational handles. Freeing a slot bumps its
// generation, so a handle that outlives its value is reported as memutils.StaleHandleError
// instead of dangling.
package arena
