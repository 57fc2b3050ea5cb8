// Package native provides the GPU dispatcher backed by gogpu/wgpu's hal
// layer. The host application owns the device and queue (and the surface, if
// any) and hands them to New; the dispatcher only manages the resources the
// command stream asks for.
//
// Build with the nogpu tag to exclude the hal-dependent implementation.
package native
