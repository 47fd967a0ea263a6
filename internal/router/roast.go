package router

import (
	"math/rand"
	"strings"
)

// Roast templates. {name} is replaced with the target's display name.
// The safe pool backs owner-requested roasts when profanity is off; the
// profane pool is only reachable when the allow_profanity toggle is on.
var safeRoastPool = []string{
	"Arre {name}, thoda soft reh — tera logic abhi beta mode me hai. 😏",
	"{name}, tera swag strong hai par andar se 404 common sense mil raha hai. 😂",
	"Bhai {name}, pehle unit tests pass kar, phir hero ban. 😅",
	"{name}, chup reh ke bhi banda classy lag sakta hai — try kar.",
}

var profaneRoastPool = []string{
	"{name}, asli baat: tera dimag chain se so nahi paata; waha logic nahi milta. 😆",
	"{name}, tu itna bakwaas kar raha hai ki mera buffer overflow ho raha hai. Chill!",
	"{name}, thoda chup kar. Teri comedy paid subscription wali ho gayi hai — mujhe block karne ka man kar raha.",
}

// chooseRoast picks a template from the appropriate pool and binds the
// target name.
func chooseRoast(targetName string, profane bool) string {
	pool := safeRoastPool
	if profane {
		pool = profaneRoastPool
	}
	template := pool[rand.Intn(len(pool))]
	return strings.ReplaceAll(template, "{name}", targetName)
}
