package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSmalltalkReply(t *testing.T) {
	greeting := smalltalkReply("Hola, buenos días")
	require.Contains(t, greeting, "Hola")

	farewell := smalltalkReply("bueno, adiós!")
	require.Contains(t, farewell, "Hasta luego")

	identity := smalltalkReply("¿Quién eres tú?")
	require.Contains(t, identity, "asistente")

	thanks := smalltalkReply("muchas gracias")
	require.Contains(t, thanks, "A ti")

	fallback := smalltalkReply("el clima de hoy")
	require.Contains(t, fallback, "Te escucho")
}

func TestSmalltalkReplyFoldsAccents(t *testing.T) {
	// accented and unaccented spellings land on the same branch
	require.Equal(t, smalltalkReply("adiós"), smalltalkReply("adios"))
	require.Equal(t, smalltalkReply("¿quién eres?"), smalltalkReply("quien eres"))
}
