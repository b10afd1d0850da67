// Package common provides helpers shared by the MCP tool packages:
// argument extraction and the instrumentation wrapper applied to every
// registered tool handler.
package common
