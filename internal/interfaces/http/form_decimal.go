package http

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var registerParsersOnce sync.Once

// registerDecimalParser permite que BodyParser y QueryParser lean decimal.Decimal desde
// formularios y query strings, con punto o coma decimal. El decodificador de fiber es global.
func registerDecimalParser() {
	registerParsersOnce.Do(func() {
		fiber.SetParserDecoder(fiber.ParserConfig{
			IgnoreUnknownKeys: true,
			ZeroEmpty:         true,
			ParserType: []fiber.ParserType{{
				Customtype: decimal.Decimal{},
				Converter:  decimalConverter,
			}},
		})
	})
}

// decimalConverter devuelve un reflect.Value inválido si el texto no es un número;
// el decodificador lo reporta como error de conversión.
func decimalConverter(value string) reflect.Value {
	d, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(value), ",", ".", 1))
	if err != nil {
		return reflect.Value{}
	}
	return reflect.ValueOf(d)
}
