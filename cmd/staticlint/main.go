// Package main реализует multichecker для статического анализа кода проекта.
//
// # Назначение
//
// Multichecker объединяет несколько статических анализаторов для проверки кода
// на соответствие стандартам качества, обнаружения потенциальных ошибок
// и выявления проблем безопасности.
//
// # Запуск
//
// Для запуска анализатора выполните:
//
//	go run cmd/staticlint/main.go ./...
//
// Или соберите бинарный файл:
//
//	go build -o staticlint cmd/staticlint/main.go
//	./staticlint ./...
//
// Для анализа конкретного пакета:
//
//	./staticlint ./internal/service/rewriter
//
// # Состав анализаторов
//
// Multichecker включает следующие группы анализаторов:
//
// ## 1. Стандартные анализаторы golang.org/x/tools/go/analysis/passes
//
//   - printf: проверяет корректность форматирования в fmt.Printf и подобных
//   - shadow: обнаруживает затенение переменных
//   - structtag: проверяет корректность тегов структур
//   - unusedresult: находит неиспользуемые результаты функций
//
// ## 2. Анализаторы класса SA из staticcheck.io
//
// Все анализаторы класса SA (Static Analysis) проверяют код на наличие
// распространенных ошибок и проблем:
//
//   - SA1*: обнаружение некорректного использования стандартной библиотеки
//   - SA2*: проверка конкурентности и синхронизации
//   - SA3*: проверка логических операций
//   - SA4*: проверка корректности использования API
//   - SA5*: проверка на распространенные ошибки
//   - SA6*: проверка эффективности кода
//   - SA9*: проверка на подозрительные конструкции
//
// ## 3. Собственный анализатор
//
//   - queryuniqueclose: находит url2.QueryUnique, открытые и потерянные без Close
//
// # Собственный анализатор queryuniqueclose
//
// Представление url2.QueryUnique перезаписывает query-строку только в Close.
// Если результат QueryUnique() сразу теряется, изменения пропадают молча.
//
// Вместо:
//
//	u.QueryUnique().SetPair("a", "1") // ❌ Будет обнаружено
//
// Используйте:
//
//	q := u.QueryUnique()
//	defer q.Close()
//	q.SetPair("a", "1") // ✅
//
// # Примеры использования
//
// Проверка всего проекта:
//
//	./staticlint ./...
//
// Проверка конкретного пакета:
//
//	./staticlint ./internal/service/rewriter
//
// С выводом подробной информации:
//
//	./staticlint -v ./...
//
// # Интеграция с CI/CD
//
// Добавьте в .github/workflows/statictest.yml:
//
//   - name: Run staticlint
//     run: |
//     go build -o staticlint cmd/staticlint/main.go
//     ./staticlint ./...
package main

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/staticcheck"

	"github.com/Popolzen/url2/internal/analysis/queryclose"
)

// analyzers собирает все анализаторы в один список
func analyzers() []*analysis.Analyzer {
	checks := []*analysis.Analyzer{
		// 1. Стандартные анализаторы
		printf.Analyzer,
		shadow.Analyzer,
		structtag.Analyzer,
		unusedresult.Analyzer,

		// 3. Собственный анализатор
		queryclose.Analyzer,
	}

	// 2. Добавляем все SA анализаторы из staticcheck
	for _, v := range staticcheck.Analyzers {
		checks = append(checks, v.Analyzer)
	}

	return checks
}

func main() {
	multichecker.Main(analyzers()...)
}
