package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	ouroborosstego "github.com/i5heu/ouroboros-stego"
	"github.com/i5heu/ouroboros-stego/pkg/passgen"
	"github.com/i5heu/ouroboros-stego/pkg/spaceinfo"
	"github.com/i5heu/ouroboros-stego/pkg/wavio"
	"github.com/i5heu/ouroboros-stego/storage"
)

const (
	USAGE = `Usage:
  %s encode <cover.wav> <output.wav> <message>  Hide a message in a WAV file
  %s decode <stego.wav>                         Recover a hidden message (prints to stdout)
  %s capacity <file.wav>                        Show how many bytes a WAV file can carry
  %s passgen [length]                           Suggest a passphrase (or a password of given length)
  %s ls                                         List embed receipts
  %s rm <receipt-id>                            Delete an embed receipt

Examples:
  %s encode song.wav out.wav "meet at noon"    # Embed message, returns receipt ID
  %s decode out.wav                            # Recover the message

Note:
  The passphrase is read from $OUROBOROS_STEGO_PASSPHRASE when set, otherwise
  prompted for on the terminal. Receipts of past encodes are kept in
  ~/.ouroboros-stego; they hold file names and sizes only, never messages or
  passphrases.
`

	// Free space demanded before writing an output WAV or opening the catalog.
	minimumFreeSpaceGB = 0.1
)

func main() {
	progName := filepath.Base(os.Args[0])

	if len(os.Args) < 2 {
		printUsage(progName)
		os.Exit(1)
	}

	engine, err := initEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing engine: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "encode":
		if len(os.Args) != 5 {
			fmt.Fprintf(os.Stderr, "Error: encode requires <cover.wav> <output.wav> <message>\n")
			printUsage(progName)
			os.Exit(1)
		}
		receiptID, err := encodeFile(engine, os.Args[2], os.Args[3], os.Args[4])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding message: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(receiptID)

	case "decode":
		if len(os.Args) != 3 {
			fmt.Fprintf(os.Stderr, "Error: decode requires a stego WAV file\n")
			printUsage(progName)
			os.Exit(1)
		}
		if err := decodeFile(engine, os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding message: %v\n", err)
			os.Exit(1)
		}

	case "capacity":
		if len(os.Args) != 3 {
			fmt.Fprintf(os.Stderr, "Error: capacity requires a WAV file\n")
			printUsage(progName)
			os.Exit(1)
		}
		if err := showCapacity(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error inspecting file: %v\n", err)
			os.Exit(1)
		}

	case "passgen":
		if err := generatePassphrase(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating passphrase: %v\n", err)
			os.Exit(1)
		}

	case "ls":
		if err := listReceipts(); err != nil {
			fmt.Fprintf(os.Stderr, "Error listing receipts: %v\n", err)
			os.Exit(1)
		}

	case "rm":
		if len(os.Args) != 3 {
			fmt.Fprintf(os.Stderr, "Error: rm requires a receipt ID\n")
			printUsage(progName)
			os.Exit(1)
		}
		if err := removeReceipt(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing receipt: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Receipt deleted")

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", os.Args[1])
		printUsage(progName)
		os.Exit(1)
	}
}

func printUsage(progName string) {
	fmt.Fprintf(os.Stderr, USAGE, progName, progName, progName, progName, progName, progName, progName, progName)
}

func initEngine() (*ouroborosstego.Stego, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	return ouroborosstego.Init(&ouroborosstego.Config{
		Compression: true,
		Logger:      logger,
	})
}

func openCatalog() (*storage.Catalog, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine user home directory: %w", err)
	}

	catalogDir := filepath.Join(homeDir, ".ouroboros-stego")
	if err := os.MkdirAll(catalogDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	// Report disk usage for the catalog's filesystem. Diagnostic only; some
	// container mounts cannot be resolved to a partition.
	if err := spaceinfo.DisplayDiskUsage([]string{catalogDir}); err != nil {
		slog.Warn("could not report disk usage for catalog", "path", catalogDir, "error", err)
	}

	return storage.Open(catalogDir, minimumFreeSpaceGB)
}

func encodeFile(engine *ouroborosstego.Stego, coverPath, outPath, message string) (string, error) {
	clip, err := wavio.ReadFile(coverPath)
	if err != nil {
		return "", err
	}

	// No pre-flight size check: compression can shrink the payload, so only
	// Encode's own capacity validation decides whether the message fits.
	passphrase, err := readPassphrase(true)
	if err != nil {
		return "", err
	}

	embedded, err := engine.Encode([]byte(message), passphrase, clip.Samples)
	if err != nil {
		return "", err
	}

	outDir := filepath.Dir(outPath)
	if err := spaceinfo.EnsureFreeSpace(outDir, minimumFreeSpaceGB); err != nil {
		return "", err
	}

	out := &wavio.Clip{
		Samples:    embedded,
		SampleRate: clip.SampleRate,
		Channels:   clip.Channels,
	}
	if err := wavio.WriteFile(outPath, out); err != nil {
		return "", err
	}

	catalog, err := openCatalog()
	if err != nil {
		return "", err
	}
	defer catalog.Close()

	ciphertextBytes, err := ouroborosstego.EmbeddedPayloadBytes(embedded)
	if err != nil {
		return "", err
	}

	receipt, err := catalog.Put(storage.Receipt{
		CoverFile:       coverPath,
		StegoFile:       outPath,
		SampleRate:      clip.SampleRate,
		Channels:        clip.Channels,
		SampleCount:     len(clip.Samples),
		MessageBytes:    len(message),
		CiphertextBytes: ciphertextBytes,
		CreatedUnix:     time.Now().Unix(),
	})
	if err != nil {
		return "", err
	}

	return receipt.ID, nil
}

func decodeFile(engine *ouroborosstego.Stego, path string) error {
	clip, err := wavio.ReadFile(path)
	if err != nil {
		return err
	}

	passphrase, err := readPassphrase(false)
	if err != nil {
		return err
	}

	message, err := engine.Decode(clip.Samples, passphrase)
	if err != nil {
		return err
	}

	fmt.Println(string(message))
	return nil
}

func showCapacity(path string) error {
	clip, err := wavio.ReadFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("File: %s\n", path)
	fmt.Printf("Sample rate: %d Hz\n", clip.SampleRate)
	fmt.Printf("Channels: %d\n", clip.Channels)
	fmt.Printf("Samples: %d\n", len(clip.Samples))
	fmt.Printf("Duration: %s\n", clip.Duration().Round(time.Millisecond))
	fmt.Printf("Message capacity: %d bytes\n", ouroborosstego.MaxMessageBytes(len(clip.Samples)))
	return nil
}

func generatePassphrase(args []string) error {
	if len(args) == 0 {
		phrase, err := passgen.Passphrase(4, "-")
		if err != nil {
			return err
		}
		fmt.Println(phrase)
		return nil
	}

	length, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid password length %q", args[0])
	}
	password, err := passgen.Password(length, passgen.Options{})
	if err != nil {
		return err
	}
	fmt.Println(password)
	return nil
}

func listReceipts() error {
	catalog, err := openCatalog()
	if err != nil {
		return err
	}
	defer catalog.Close()

	receipts, err := catalog.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tCOVER\tOUTPUT\tMESSAGE BYTES\tSAMPLES")
	for _, r := range receipts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			r.ID,
			time.Unix(r.CreatedUnix, 0).Format(time.RFC3339),
			filepath.Base(r.CoverFile),
			filepath.Base(r.StegoFile),
			r.MessageBytes,
			r.SampleCount,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("Entries: %d\n", len(receipts))
	return nil
}

func removeReceipt(id string) error {
	catalog, err := openCatalog()
	if err != nil {
		return err
	}
	defer catalog.Close()

	return catalog.Delete(id)
}
