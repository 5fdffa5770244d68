package d2interface

// GameType is the kind of game the client is running. Only meaningful while
// a game is running.
type GameType uint32

// HWND is a window handle in the host process.
type HWND uint32

// Entity is a game unit. Its layout differs between host builds and is not
// read through this package.
type Entity struct{}

// EnvArray holds active environment effects (rain splashes, bubbles).
type EnvArray struct{}
