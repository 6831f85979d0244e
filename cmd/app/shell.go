package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/starford/notatnik/internal/noteservice"
)

const shellMenu = `
1. Dodaj notatkę
2. Usuń notatkę
3. Wyświetl notatki
4. Wyjdź
Wybierz opcję: `

// runShell drives the interactive menu until the user quits, input ends or
// ctx is cancelled.
func runShell(ctx context.Context, in io.Reader, out io.Writer, svc *noteservice.Service) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	readLine := func(prompt string) (string, bool) {
		fmt.Fprint(out, prompt)
		if !sc.Scan() {
			return "", false
		}
		return strings.TrimRight(sc.Text(), "\r"), true
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		choice, ok := readLine(shellMenu)
		if !ok {
			fmt.Fprintln(out)
			return sc.Err()
		}

		switch strings.TrimSpace(choice) {
		case "1":
			text, ok := readLine("Wpisz treść notatki: ")
			if !ok {
				return sc.Err()
			}
			if err := svc.Add(text); err != nil {
				return err
			}
		case "2":
			raw, ok := readLine("Podaj indeks notatki do usunięcia: ")
			if !ok {
				return sc.Err()
			}
			index, err := noteservice.ParseIndex(raw)
			if err != nil {
				if err := svc.InvalidIndex(); err != nil {
					return err
				}
				continue
			}
			if _, err := svc.Remove(index); err != nil {
				return err
			}
		case "3":
			if err := svc.Display(); err != nil {
				return err
			}
		case "4":
			return nil
		default:
			fmt.Fprintln(out, "Nieprawidłowa opcja.")
		}
	}
}
