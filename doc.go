// Package yamltree provides:
//
// - A typed, path-addressable YAML document model (Scalar, Null, List, Map, Tagged)
// - A node reader that resolves anchors, aliases and '<<' merge keys from an event stream
// - An encoder adapter (Output) that turns structural callbacks into emission events
// - A stable error model via *Error (code, message, Path, line and column)
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place event sources and sinks under source/, codecs under codec/, and the CLI under cmd/yamltree.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	y := yamltree.Default()
//	n, err := y.ParseToNode(text)
//	cfg, err := yamltree.Parse[ServerConfig](ctx, y, data)
//	out, err := y.Marshal(cfg)
package yamltree
