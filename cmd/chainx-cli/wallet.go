package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/chainx-org/chainx-cli/config"
	"github.com/chainx-org/chainx-cli/internal/keyring"
	"github.com/chainx-org/chainx-cli/internal/keystore"
)

func cmdWallet(cfg *config.Config, args []string) {
	if len(args) == 0 {
		fatal("wallet requires a subcommand (run 'chainx-cli help')")
	}
	sub := args[0]
	args = args[1:]

	switch sub {
	case "generate":
		mnemonic, err := keyring.GenerateMnemonic()
		if err != nil {
			fatal("%v", err)
		}
		fmt.Println(mnemonic)
	case "create":
		cmdWalletCreate(cfg, args)
	case "import":
		cmdWalletImport(cfg, args)
	case "list":
		cmdWalletList(cfg)
	case "address":
		ks := openKeystore(cfg)
		addr, err := ks.Address(nameFlag(args, "wallet address"))
		if err != nil {
			fatal("%v", err)
		}
		fmt.Println(addr)
	case "export":
		cmdWalletExport(cfg, args)
	case "delete":
		ks := openKeystore(cfg)
		if err := ks.Delete(nameFlag(args, "wallet delete")); err != nil {
			fatal("%v", err)
		}
	case "dev":
		cmdWalletDev()
	default:
		fatal("unknown wallet subcommand %q", sub)
	}
}

func cmdWalletCreate(cfg *config.Config, args []string) {
	name := nameFlag(args, "wallet create")

	mnemonic, err := keyring.GenerateMnemonic()
	if err != nil {
		fatal("%v", err)
	}
	storeKey(cfg, name, mnemonic)

	// Shown once. The keystore holds only the derived key.
	fmt.Fprintln(os.Stderr, "Recovery mnemonic (write it down, it is not stored):")
	fmt.Println(mnemonic)
}

func cmdWalletImport(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("wallet import", flag.ExitOnError)
	name := fs.String("name", "", "Key name")
	mnemonic := fs.String("mnemonic", "", "BIP-39 recovery mnemonic")
	if err := fs.Parse(args); err != nil {
		fatal("%v", err)
	}
	if *name == "" {
		fatal("--name is required")
	}
	if !keyring.ValidateMnemonic(*mnemonic) {
		fatal("invalid mnemonic")
	}
	storeKey(cfg, *name, *mnemonic)
}

func storeKey(cfg *config.Config, name, mnemonic string) {
	kp, err := keyring.FromMnemonic(mnemonic, "", 0)
	if err != nil {
		fatal("%v", err)
	}
	defer kp.Zero()

	password, err := readPassword("New password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	if string(password) != string(confirm) {
		fatal("passwords do not match")
	}

	ks := openKeystore(cfg)
	if err := ks.Create(name, kp, password); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("%s: %s\n", name, kp.Address())
}

func cmdWalletList(cfg *config.Config) {
	ks := openKeystore(cfg)
	names, err := ks.List()
	if err != nil {
		fatal("%v", err)
	}
	for _, name := range names {
		addr, err := ks.Address(name)
		if err != nil {
			fmt.Printf("%s: (%v)\n", name, err)
			continue
		}
		fmt.Printf("%s: %s\n", name, addr)
	}
}

func cmdWalletExport(cfg *config.Config, args []string) {
	name := nameFlag(args, "wallet export")
	ks := openKeystore(cfg)

	password, err := readPassword("Password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	kp, err := ks.Unlock(name, password)
	if err != nil {
		fatal("%v", err)
	}
	defer kp.Zero()
	fmt.Printf("0x%s\n", hex.EncodeToString(kp.Seed()))
}

func cmdWalletDev() {
	for _, name := range []string{"Alice", "Bob", "Charlie", "Dave", "Eve", "Ferdie", "One", "Two"} {
		kp, err := keyring.Dev(name)
		if err != nil {
			fatal("%v", err)
		}
		fmt.Printf("%-8s %s\n", name, kp.Address())
		kp.Zero()
	}
}

func openKeystore(cfg *config.Config) *keystore.Keystore {
	ks, err := keystore.New(cfg.KeystoreDir())
	if err != nil {
		fatal("%v", err)
	}
	return ks
}

func nameFlag(args []string, cmd string) string {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	name := fs.String("name", "", "Key name")
	if err := fs.Parse(args); err != nil {
		fatal("%v", err)
	}
	if *name == "" {
		fatal("--name is required")
	}
	return *name
}

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}
