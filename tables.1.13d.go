package d2interface

import "github.com/d2fps/d2interface/fileversion"

var v113d = &Version{
	Name:        "1.13d",
	Fingerprint: Fingerprint{FileVersion: fileversion.MustParse("1.0.13.64")},
	Client: MustDerive(clientBase, "1.13d/client",
		clientBase.At(fieldPlayer, Offset(0x11d050)),
		clientBase.At(fieldEnvSplashes, Offset(0x11d080)),
		clientBase.At(fieldEnvBubbles, Offset(0x11d084)),
		clientBase.At(fieldClientUpdateCount, Offset(0x108758)),
		clientBase.At(fieldGameType, Offset(0x11d1dc)),
		clientBase.At(fieldActiveEntityTables, Offset(0x1047b8)),
		clientBase.At(fieldDrawGameFn, Offset(0x108744)),
		clientBase.At(fieldClientFpsFrameCount, Offset(0x10876c)),
		clientBase.At(fieldClientFrameCount, Offset(0x108754)),
	),
	Gfx: MustDerive(gfxOrdinals, "1.13d/gfx",
		gfxOrdinals.At(fieldRenderInPerspective, Offset(0xa8b0)),
		gfxOrdinals.At(fieldHwnd, Offset(0x14a44)),
		gfxOrdinals.At(fieldGetHwnd, Absent()),
		gfxOrdinals.At(fieldDrawLine, Absent()),
	),
	Game: MustDerive(gameBase, "1.13d/game",
		gameBase.At(fieldServerUpdateTime, Offset(0x111c30)),
	),
	Win: MustDerive(winOrdinals, "1.13d/win",
		winOrdinals.At(fieldDrawMenu, Offset(0xeb30)),
		winOrdinals.At(fieldFindClosestColor, Absent()),
	),
}

func init() {
	DefaultRegistry.MustRegister(v113d)
}
