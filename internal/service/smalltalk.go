package service

import (
	"regexp"

	"github.com/xxxsen/docchat/internal/retrieval"
)

// patterns match against folded text, so accented forms like
// "adiós" or "quién" are covered by their plain spellings.
var (
	greetingPattern = regexp.MustCompile(`\b(hola|buenas|buenos dias|buenas tardes|buenas noches|hey|que tal|saludos)\b`)
	farewellPattern = regexp.MustCompile(`\b(adios|hasta luego|nos vemos|chao|bye)\b`)
	identityPattern = regexp.MustCompile(`\b(quien eres|que eres|que puedes hacer|ayuda|como funcionas)\b`)
	thanksPattern   = regexp.MustCompile(`\b(gracias|muchas gracias|te lo agradezco)\b`)
)

func smalltalkReply(text string) string {
	folded := retrieval.Fold(text)
	switch {
	case identityPattern.MatchString(folded):
		return "Soy un asistente documental: puedo conversar contigo y buscar dentro de los archivos que subas a esta sesión. Pregúntame algo o adjunta un documento."
	case greetingPattern.MatchString(folded):
		return "Hola, soy tu asistente documental. Puedo conversar y también buscar en los documentos que hayas cargado. ¿En qué te ayudo?"
	case farewellPattern.MatchString(folded):
		return "Hasta luego. Si necesitas algo más, aquí estaré."
	case thanksPattern.MatchString(folded):
		return "A ti. ¿Seguimos con algo más?"
	default:
		return "Te escucho. Si tu consulta depende de algún documento, súbelo a la sesión y lo reviso; si no, cuéntame más y seguimos conversando."
	}
}
