// Package x11 provides Linux support for X11 sessions. The direct title is
// the ICCCM WM_NAME property; the fallback node is the client's EWMH entry,
// whose _NET_WM_NAME carries the UTF-8 name that WM_NAME often cannot.
// On other systems the package is empty and registers nothing.
package x11
