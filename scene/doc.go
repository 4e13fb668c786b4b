// Package scene implements the per-frame scheduling core of the toolkit:
// a generational node/layer registry over flat arrays, and the passes that
// turn it into render and event schedules each frame.
//
// A Graph holds the retained state: node slots (parent links, flags,
// absolute geometry), the circular top-level stacking order, and layers
// with their attached data slots. All mutation happens between frames
// through Graph methods.
//
// A Pass holds every scratch and output array the frame pipeline needs,
// pre-sized from the graph by Resize. Running a frame is then a fixed
// sequence of pure, allocation-free transforms:
//
//	p.BuildOrder(g)            // breadth-first propagation order
//	// caller computes layout using p.Order()
//	p.BuildVisible(g)          // depth-first visible order + subtree extents
//	p.CullClips(g, viewport)   // rectangle clip culling into a bitset
//	p.OrderData(g)             // per-layer data runs + draw range table
//	p.CompactDraws()           // drop empty draw ranges
//	p.OrderEvents(g)           // reverse-order event candidate lists
//
// Pass.Run performs the whole sequence. The package is single-threaded by
// contract; sharing a Graph or Pass across goroutines without external
// synchronization is a programmer error, as is running a stage against a
// graph the pass was not sized for. Programmer errors panic with a
// "scene:" prefix rather than returning errors.
package scene
