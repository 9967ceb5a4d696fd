package tools

import "math/rand"

const numbers = "0123456789"

// RandomNumbers gera uma sequência de dígitos (ex: sufixo de sala outbound).
// Usa o gerador global do math/rand, que é seguro para uso concorrente
// (o worker de ligações chama isso de várias goroutines).
func RandomNumbers(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = numbers[rand.Intn(len(numbers))]
	}
	return string(b)
}
