package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"todomaster/internal/session"

	"github.com/chzyer/readline"
)

// lineInput 终端登录提示的输入抽象；readline 不可用时退回到
// bufio 逐行读取
// lineInput abstracts the terminal login prompt; when readline is
// unavailable it falls back to plain bufio line reads
type lineInput interface {
	ReadLine(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Close() error
}

type basicLineInput struct {
	reader *bufio.Reader
	out    io.Writer
}

func newBasicLineInput(in io.Reader, out io.Writer) *basicLineInput {
	return &basicLineInput{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (b *basicLineInput) ReadLine(prompt string) (string, error) {
	if b.out != nil {
		fmt.Fprint(b.out, prompt)
	}
	line, err := b.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadPassword 无 readline 时密码会回显 / passwords echo without readline
func (b *basicLineInput) ReadPassword(prompt string) (string, error) {
	return b.ReadLine(prompt)
}

func (b *basicLineInput) Close() error { return nil }

type readlineInput struct {
	instance *readline.Instance
}

func newReadlineInput(historyPath string) (*readlineInput, error) {
	if historyPath != "" {
		if err := os.MkdirAll(filepath.Dir(historyPath), 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	instance, err := readline.NewEx(&readline.Config{
		Prompt:            "> ",
		HistoryFile:       historyPath,
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, err
	}
	return &readlineInput{instance: instance}, nil
}

func (r *readlineInput) ReadLine(prompt string) (string, error) {
	r.instance.SetPrompt(prompt)
	return r.instance.Readline()
}

func (r *readlineInput) ReadPassword(prompt string) (string, error) {
	data, err := r.instance.ReadPassword(prompt)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *readlineInput) Close() error {
	if r == nil || r.instance == nil {
		return nil
	}
	return r.instance.Close()
}

func newLineInput(historyPath string) (lineInput, error) {
	readlineReader, err := newReadlineInput(historyPath)
	if err == nil {
		return readlineReader, nil
	}
	return newBasicLineInput(os.Stdin, os.Stdout), err
}

// runLoginPrompt 终端登录：成功后令牌存入凭据库，TUI 启动时直接复用
// runLoginPrompt signs in from the terminal; the token lands in the
// credential store and the TUI picks it up on the next start
func runLoginPrompt(sess *session.Store, historyPath string) error {
	input, inputErr := newLineInput(historyPath)
	if inputErr != nil {
		fmt.Fprintf(os.Stderr, "line editor unavailable, fallback to basic input: %v\n", inputErr)
	}
	defer input.Close()

	email, err := input.ReadLine("email: ")
	if err != nil {
		return err
	}
	password, err := input.ReadPassword("password: ")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sess.Login(ctx, strings.TrimSpace(email), password); err != nil {
		return err
	}

	if user, ok := sess.User(); ok {
		fmt.Printf("signed in as %s <%s>\n", user.Name, user.Email)
	} else {
		fmt.Println("signed in")
	}
	return nil
}
