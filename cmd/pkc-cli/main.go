// Package main provides the pkc-cli command line interface for the toy
// McEliece cryptosystem.
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	pkc "github.com/SDarius22/PKC"
	"github.com/SDarius22/PKC/alpha27"
	"github.com/SDarius22/PKC/mceliece"
	"github.com/SDarius22/PKC/utils"
)

const appName = "pkc-cli"

// KeyPairExport is an exported bit-level key pair.
type KeyPairExport struct {
	N           int    `json:"n"`
	K           int    `json:"k"`
	T           int    `json:"t"`
	PublicKey   string `json:"public_key"`
	PrivateKey  string `json:"private_key"`
	Fingerprint string `json:"fingerprint"`
	CreatedAt   string `json:"created_at"`
}

// BlockKeyPairExport is an exported text block-driver key pair.
type BlockKeyPairExport struct {
	N           int    `json:"n"`
	KChars      int    `json:"k_chars"`
	T           int    `json:"t"`
	PublicKey   string `json:"public_key"`
	PrivateKey  string `json:"private_key"`
	Fingerprint string `json:"fingerprint"`
	CreatedAt   string `json:"created_at"`
}

// CiphertextExport is encrypted text as hex-packed blocks.
type CiphertextExport struct {
	N      int      `json:"n"`
	Blocks []string `json:"blocks"`
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch command := os.Args[1]; command {
	case "help", "--help", "-h":
		printUsage()
	case "version", "--version", "-v":
		fmt.Printf("%s version %s\n", appName, pkc.Version)
	case "keygen":
		err = cmdKeygen(os.Args[2:])
	case "encrypt":
		err = cmdEncrypt(os.Args[2:])
	case "decrypt":
		err = cmdDecrypt(os.Args[2:])
	case "text-keygen":
		err = cmdTextKeygen(os.Args[2:])
	case "text-encrypt":
		err = cmdTextEncrypt(os.Args[2:])
	case "text-decrypt":
		err = cmdTextDecrypt(os.Args[2:])
	default:
		color.Red("unknown command: %s", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func printUsage() {
	color.Cyan("%s - toy McEliece cryptosystem over GF(2)", appName)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s keygen -n <len> -k <dim> -t <errors> [-out file]\n", appName)
	fmt.Printf("  %s encrypt -key <file> -msg <bits>\n", appName)
	fmt.Printf("  %s decrypt -key <file> -ct <hex>\n", appName)
	fmt.Printf("  %s text-keygen -n <len> -chars <per-block> -t <errors> [-out file]\n", appName)
	fmt.Printf("  %s text-encrypt -key <file> -msg <text> [-out file]\n", appName)
	fmt.Printf("  %s text-decrypt -key <file> -in <file>\n", appName)
	fmt.Printf("  %s version\n", appName)
	fmt.Println()
	fmt.Println("Bit messages are strings of 0s and 1s; text messages use the")
	fmt.Println("alphabet '_' plus a-z. Keys and ciphertexts are stored as JSON.")
}

func cmdKeygen(args []string) error {
	fs := flag.NewFlagSet("keygen", flag.ExitOnError)
	n := fs.Int("n", 10, "code length (ciphertext bits)")
	k := fs.Int("k", 5, "code dimension (message bits)")
	t := fs.Int("t", 2, "error weight")
	out := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	start := time.Now()
	kp, err := mceliece.GenerateKeys(pkc.McElieceParams{N: *n, K: *k, T: *t})
	if err != nil {
		return err
	}

	pub := mceliece.SerializePublicKey(&kp.PublicKey)
	export := KeyPairExport{
		N:           *n,
		K:           *k,
		T:           *t,
		PublicKey:   hex.EncodeToString(pub),
		PrivateKey:  hex.EncodeToString(mceliece.SerializePrivateKey(&kp.PrivateKey)),
		Fingerprint: hex.EncodeToString(utils.SHA3256(pub)[:8]),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := writeJSON(*out, export); err != nil {
		return err
	}
	color.Green("generated [%d,%d] key pair with t=%d in %v (fingerprint %s)",
		*n, *k, *t, time.Since(start).Round(time.Millisecond), export.Fingerprint)
	return nil
}

func cmdEncrypt(args []string) error {
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	keyFile := fs.String("key", "", "key pair JSON file")
	msg := fs.String("msg", "", "message bits, e.g. 10110")
	if err := fs.Parse(args); err != nil {
		return err
	}

	export, err := loadKeyPair(*keyFile)
	if err != nil {
		return err
	}
	pk, _, err := export.keys()
	if err != nil {
		return err
	}
	message, err := parseBits(*msg)
	if err != nil {
		return err
	}

	c, err := mceliece.Encrypt(pk, message)
	if err != nil {
		return err
	}
	fmt.Println(bitsToHex(c))
	return nil
}

func cmdDecrypt(args []string) error {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	keyFile := fs.String("key", "", "key pair JSON file")
	ct := fs.String("ct", "", "ciphertext as hex-packed bits")
	if err := fs.Parse(args); err != nil {
		return err
	}

	export, err := loadKeyPair(*keyFile)
	if err != nil {
		return err
	}
	_, sk, err := export.keys()
	if err != nil {
		return err
	}
	ciphertext, err := hexToBits(*ct, export.N)
	if err != nil {
		return err
	}

	// The exhaustive decoder walks 2^k candidates; show its progress.
	bar := progressbar.Default(int64(uint64(1)<<uint(sk.G.Rows)), "decoding")
	dec := &mceliece.BruteForceDecoder{
		G: sk.G,
		Progress: func(done, total uint64) {
			_ = bar.Set64(int64(done))
		},
	}
	m, err := mceliece.DecryptWithDecoder(sk, ciphertext, dec)
	_ = bar.Finish()
	if err != nil {
		return err
	}
	fmt.Println(formatBits(m))
	return nil
}

func cmdTextKeygen(args []string) error {
	fs := flag.NewFlagSet("text-keygen", flag.ExitOnError)
	n := fs.Int("n", 30, "code length (ciphertext bits per block)")
	chars := fs.Int("chars", 3, "plaintext characters per block")
	t := fs.Int("t", 2, "error weight")
	out := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	start := time.Now()
	kp, err := alpha27.GenerateKeys(*n, *chars, *t)
	if err != nil {
		return err
	}

	pub := mceliece.SerializePublicKey(&kp.PublicKey.McEliece)
	export := BlockKeyPairExport{
		N:           *n,
		KChars:      *chars,
		T:           *t,
		PublicKey:   hex.EncodeToString(pub),
		PrivateKey:  hex.EncodeToString(mceliece.SerializePrivateKey(&kp.PrivateKey.McEliece)),
		Fingerprint: hex.EncodeToString(utils.SHA3256(pub)[:8]),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := writeJSON(*out, export); err != nil {
		return err
	}
	color.Green("generated text key pair: %d chars/block over a [%d,%d] code, t=%d, in %v",
		*chars, *n, 5**chars, *t, time.Since(start).Round(time.Millisecond))
	return nil
}

func cmdTextEncrypt(args []string) error {
	fs := flag.NewFlagSet("text-encrypt", flag.ExitOnError)
	keyFile := fs.String("key", "", "key pair JSON file")
	msg := fs.String("msg", "", "plaintext over '_' and a-z")
	out := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	export, err := loadBlockKeyPair(*keyFile)
	if err != nil {
		return err
	}
	pk, _, err := export.keys()
	if err != nil {
		return err
	}

	blocks, err := alpha27.EncryptMessage(pk, *msg)
	if err != nil {
		return err
	}

	bar := progressbar.Default(int64(len(blocks)), "encoding blocks")
	ct := CiphertextExport{N: export.N, Blocks: make([]string, 0, len(blocks))}
	for _, b := range blocks {
		ct.Blocks = append(ct.Blocks, bitsToHex(b))
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if err := writeJSON(*out, ct); err != nil {
		return err
	}
	color.Green("encrypted %d characters into %d blocks", len(*msg), len(blocks))
	return nil
}

func cmdTextDecrypt(args []string) error {
	fs := flag.NewFlagSet("text-decrypt", flag.ExitOnError)
	keyFile := fs.String("key", "", "key pair JSON file")
	in := fs.String("in", "", "ciphertext JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	export, err := loadBlockKeyPair(*keyFile)
	if err != nil {
		return err
	}
	_, sk, err := export.keys()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	var ct CiphertextExport
	if err := json.Unmarshal(data, &ct); err != nil {
		return fmt.Errorf("invalid ciphertext file: %w", err)
	}

	// Every block costs an exhaustive decode, so this is the slow path.
	bar := progressbar.Default(int64(len(ct.Blocks)), "decoding blocks")
	plaintext := ""
	for i, blockHex := range ct.Blocks {
		block, err := hexToBits(blockHex, ct.N)
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		text, err := alpha27.DecryptBlock(sk, block)
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		plaintext += text
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	fmt.Println(plaintext)
	return nil
}

// =============================================================================
// Key loading
// =============================================================================

func loadKeyPair(path string) (*KeyPairExport, error) {
	if path == "" {
		return nil, fmt.Errorf("missing -key")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var export KeyPairExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("invalid key file: %w", err)
	}
	return &export, nil
}

func (e *KeyPairExport) keys() (*pkc.McEliecePublicKey, *pkc.McEliecePrivateKey, error) {
	pubData, err := hex.DecodeString(e.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid public key hex: %w", err)
	}
	pk, err := mceliece.DeserializePublicKey(pubData)
	if err != nil {
		return nil, nil, err
	}
	privData, err := hex.DecodeString(e.PrivateKey)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid private key hex: %w", err)
	}
	sk, err := mceliece.DeserializePrivateKey(privData)
	if err != nil {
		return nil, nil, err
	}
	return pk, sk, nil
}

func loadBlockKeyPair(path string) (*BlockKeyPairExport, error) {
	if path == "" {
		return nil, fmt.Errorf("missing -key")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var export BlockKeyPairExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("invalid key file: %w", err)
	}
	return &export, nil
}

func (e *BlockKeyPairExport) keys() (*pkc.Alpha27PublicKey, *pkc.Alpha27PrivateKey, error) {
	pubData, err := hex.DecodeString(e.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid public key hex: %w", err)
	}
	mpk, err := mceliece.DeserializePublicKey(pubData)
	if err != nil {
		return nil, nil, err
	}
	privData, err := hex.DecodeString(e.PrivateKey)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid private key hex: %w", err)
	}
	msk, err := mceliece.DeserializePrivateKey(privData)
	if err != nil {
		return nil, nil, err
	}

	kBits := alpha27.BitsPerChar * e.KChars
	pk := &pkc.Alpha27PublicKey{McEliece: *mpk, N: e.N, KBits: kBits, KChars: e.KChars}
	sk := &pkc.Alpha27PrivateKey{McEliece: *msk, N: e.N, KBits: kBits, KChars: e.KChars}
	return pk, sk, nil
}

// =============================================================================
// Bit vector formatting
// =============================================================================

// parseBits parses a string of 0s and 1s into a bit vector.
func parseBits(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("missing message bits")
	}
	bits := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			bits[i] = 0
		case '1':
			bits[i] = 1
		default:
			return nil, fmt.Errorf("message must contain only 0s and 1s, found %q", s[i])
		}
	}
	return bits, nil
}

// formatBits renders a bit vector as a string of 0s and 1s.
func formatBits(bits []byte) string {
	out := make([]byte, len(bits))
	for i, b := range bits {
		out[i] = '0' + (b & 1)
	}
	return string(out)
}

// bitsToHex packs a bit vector eight per byte, LSB first, and hex-encodes it.
func bitsToHex(bits []byte) string {
	packed := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b&1 == 1 {
			packed[i/8] |= 1 << (i % 8)
		}
	}
	return hex.EncodeToString(packed)
}

// hexToBits reverses bitsToHex for a vector of n bits.
func hexToBits(s string, n int) ([]byte, error) {
	packed, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	if len(packed) < (n+7)/8 {
		return nil, fmt.Errorf("need %d bytes for %d bits, got %d", (n+7)/8, n, len(packed))
	}
	bits := make([]byte, n)
	for i := 0; i < n; i++ {
		bits[i] = (packed[i/8] >> (i % 8)) & 1
	}
	return bits, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "" || path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0600)
}
