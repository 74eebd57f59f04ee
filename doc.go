// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bsonstream is a high-performance, streaming BSON-to-JSON
// transcoder.  It converts a single in-memory BSON document into UTF-8
// JSON bytes, either as one contiguous buffer or as a sequence of
// fixed-size chunks handed off between a producer goroutine and a
// consumer, while minimizing copies.
//
// The input document must already be fully addressable in memory; only
// the output is produced incrementally.  BSON types with no natural JSON
// representation (binary, regex, timestamp, code-with-scope, decimal128,
// db pointer, symbol, min/max key) are rejected rather than best-effort
// encoded, and the output never carries BSON type information the way
// MongoDB Extended JSON does.
//
// Testing
//
// bsonstream is tested against golden JSON strings for every supported
// element type, including the SIMD-width escape-writer boundary offsets
// and deeply nested documents, using a small hand-rolled document
// builder so malformed and truncated fixtures can be constructed byte by
// byte. go.mongodb.org/mongo-driver/bson remains available for tests
// that want BSON produced by a real encoder rather than hand-written
// bytes.
package bsonstream
