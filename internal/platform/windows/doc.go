// Package windows provides Windows platform support using user32 and the
// UI Automation COM API. On other systems only the HRESULT helpers build
// and nothing is registered.
package windows
