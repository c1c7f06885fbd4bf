// Package wazero binds the ttlex host functions and the guest's packed
// pointer/length ABI to the wazero runtime.
//
//	registry, err := hostfuncs.NewRegistry(hostfuncs.WithBundle(hostfuncs.GuestBundle()))
//	if err != nil {
//	    return err
//	}
//	runtime := wazero.NewRuntime(ctx)
//	err = ttlexwazero.RegisterWithRuntime(ctx, runtime, registry)
//
// Guest exports are called with CallPacked, which copies the input into
// memory obtained from the guest's allocate export, calls the export, and
// copies the packed result out before releasing both buffers.
package wazero
