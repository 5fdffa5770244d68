package d2interface

import "github.com/d2fps/d2interface/fileversion"

var v111b = &Version{
	Name:        "1.11b",
	Fingerprint: Fingerprint{FileVersion: fileversion.MustParse("1.0.11.46")},
	Client: MustDerive(clientBase, "1.11b/client",
		clientBase.At(fieldPlayer, Offset(0x11c1e0)),
		clientBase.At(fieldEnvEffects, Offset(0x11c518)),
		clientBase.At(fieldGameType, Offset(0x11c2ac)),
		clientBase.At(fieldActiveEntityTables, Offset(0x10b470)),
		clientBase.At(fieldEntityTables2, Offset(0x10a870)),
		clientBase.At(fieldClientLoopGlobals, Offset(0x11a280)),
		clientBase.At(fieldApplyPosChange, Offset(0x7c100)),
		clientBase.At(fieldCursorTable, Offset(0xd4a30)),
		clientBase.At(fieldGameCursor, Offset(0xfb424)),
		clientBase.At(fieldViewportWidth, Offset(0x123394)),
		clientBase.At(fieldViewportHeight, Offset(0x123390)),
		clientBase.At(fieldViewportShift, Offset(0x11c3e8)),
	),
	Gfx: MustDerive(gfxOrdinals, "1.11b/gfx"),
	Game: MustDerive(gameBase, "1.11b/game",
		gameBase.At(fieldServerUpdateTime, Offset(0x111c00)),
	),
	Win: MustDerive(winOrdinals, "1.11b/win"),
}

func init() {
	DefaultRegistry.MustRegister(v111b)
}
