// Package formats reads and writes 3D model files. Wavefront OBJ documents
// are encoded with (*OBJ).Encode and decoded with ParseOBJ.
package formats
