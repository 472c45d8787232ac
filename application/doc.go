/*
Package application wires the merkle trees to the outside world.

Config

A Config is read from a TOML file. It selects the store backend
(leveldb or pebble, optionally behind a read cache), the directory
the trees are stored in, the hasher, and the logger.

Logger

This module implements a generic logging system on top of zap that
can be used by any executable of this module.

Trees

OpenTree opens a named tree with the store and hasher of a Config.
*/
package application
