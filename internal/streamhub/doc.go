// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package streamhub backs the CALL protocol's streaming outcome
// (state:"streaming"): an ops.KindStreamSeed handler tells the
// dispatcher which topics a caller wants, the dispatcher stashes that
// claim under the call's requestId, and the caller then opens a
// websocket at the Location the envelope named to redeem it.
//
// Hub itself is a suture.Service: it runs the same register/unregister/
// broadcast loop gorilla/websocket hub implementations commonly use,
// scoped down to topic-filtered fan-out instead of a single global
// broadcast.
package streamhub
