// Package host provides the filesystem, output and process collaborators the
// devrc interpreter runs against.
//
// [FS] is a go-billy filesystem with a working directory of its own, backed
// either by the host ([NewOS]) or by memory ([NewMemory]). [Writer] prepares
// output destinations on it, and [Exec] runs external commands.
package host
