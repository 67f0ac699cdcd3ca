// Package io reads and writes serialized graphs as JSON, BSON or YAML.
//
// # Format
//
// All encodings carry the same document, the wire form of
// [graph.SerializedGraph]:
//
//	{
//	  "attributes": {"name": "deps"},
//	  "nodes": [
//	    {"key": "app"},
//	    {"key": "lib", "attributes": {"version": "1.2.0"}}
//	  ],
//	  "edges": [
//	    {"key": "e1", "source": "app", "target": "lib"},
//	    {"source": "lib", "target": "app", "undirected": true}
//	  ],
//	  "options": {"type": "mixed", "multi": false, "allowSelfLoops": true}
//	}
//
// An edge without a key gets a generated one on import. Node keys, sources
// and targets that decode as numbers are stored under their canonical
// string form (see [graph.CanonicalKey]).
//
// # Import
//
// Use [Import] to read a file, picking the codec from the extension, or
// [ReadJSON] / [ReadBSON] / [ReadYAML] for any io.Reader:
//
//	g, err := io.Import(ctx, "deps.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Options stored in the document are applied first; options passed to the
// read functions override them. Malformed input is an INVALID_FORMAT error;
// a document that decodes but does not describe a valid graph keeps the
// engine's error code.
//
// # Export
//
// Use [Export] to write a file or [WriteJSON] / [WriteBSON] / [WriteYAML]
// for any io.Writer:
//
//	err := io.Export(ctx, g, "deps.bson")
//
// Nodes and edges are written in insertion order, so an export followed by
// an import reproduces the graph, keys included.
package io
