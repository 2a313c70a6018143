/*
Copyright © 2026 Ontoflow Authors
*/
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config represents the onto configuration
type Config struct {
	OutputDir      string `yaml:"output_dir,omitempty"`
	Target         string `yaml:"target,omitempty"`
	EmbeddingModel string `yaml:"embedding_model,omitempty"`
}

var (
	cfgOutputDir string
	cfgTarget    string
	cfgEmbedding string
	show         bool
	global       bool
	local        bool
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure onto settings",
	Long: `Configure onto settings like the default output directory, target
framework, and embedding model used for run search.

Configuration can be stored globally or locally:
  --global    Save to ~/.ontoflow.yaml (user-wide, default)
  --local     Save to ./.ontoflow.yaml (project-specific)

Local config takes precedence over global config.

Examples:
  onto config --output generated --global    Set default output directory
  onto config --target crewai --local        Only generate CrewAI here
  onto config --embedding nomic-embed-text   Set the search embedding model
  onto config --show                         Show current configuration`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath := getConfigPathWithScope()

		if show {
			showConfigWithScope()
			return
		}

		if cfgOutputDir == "" && cfgTarget == "" && cfgEmbedding == "" {
			fmt.Println("Error: No configuration option provided.")
			fmt.Println()
			fmt.Println("Available options:")
			fmt.Println("  --output <dir>      Set default output directory")
			fmt.Println("  --target <name>     Set default target (crewai, autogen, all)")
			fmt.Println("  --embedding <name>  Set embedding model for run search")
			fmt.Println("  --show              Show current configuration")
			fmt.Println()
			fmt.Println("Scope options:")
			fmt.Println("  --global            Save to ~/.ontoflow.yaml (default)")
			fmt.Println("  --local             Save to ./.ontoflow.yaml (project)")
			os.Exit(1)
		}

		config := loadConfig(configPath)

		if cfgOutputDir != "" {
			config.OutputDir = cfgOutputDir
			fmt.Printf("✓ Output directory set to: %s\n", cfgOutputDir)
		}
		if cfgTarget != "" {
			config.Target = cfgTarget
			fmt.Printf("✓ Target set to: %s\n", cfgTarget)
		}
		if cfgEmbedding != "" {
			config.EmbeddingModel = cfgEmbedding
			fmt.Printf("✓ Embedding model set to: %s\n", cfgEmbedding)
		}

		if err := saveConfig(configPath, config); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}

		scope := "global"
		if local {
			scope = "local"
		}
		fmt.Printf("\nConfiguration saved to: %s (%s)\n", configPath, scope)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVar(&cfgOutputDir, "output", "", "Default output directory for generated scripts")
	configCmd.Flags().StringVar(&cfgTarget, "target", "", "Default target framework")
	configCmd.Flags().StringVar(&cfgEmbedding, "embedding", "", "Embedding model used for run search")
	configCmd.Flags().BoolVar(&show, "show", false, "Show current configuration")
	configCmd.Flags().BoolVar(&global, "global", false, "Use global config (~/.ontoflow.yaml)")
	configCmd.Flags().BoolVar(&local, "local", false, "Use local config (./.ontoflow.yaml)")
}

func getGlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
		os.Exit(1)
	}
	return filepath.Join(home, ".ontoflow.yaml")
}

func getLocalConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting current directory: %v\n", err)
		os.Exit(1)
	}
	return filepath.Join(cwd, ".ontoflow.yaml")
}

func getConfigPathWithScope() string {
	if local {
		return getLocalConfigPath()
	}
	return getGlobalConfigPath()
}

func loadConfig(path string) *Config {
	config := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		// Config doesn't exist yet, return empty config
		return config
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not parse existing config: %v\n", err)
		return &Config{}
	}

	return config
}

// LoadEffectiveConfig loads config with local taking precedence over global
func LoadEffectiveConfig() *Config {
	globalConfig := loadConfig(getGlobalConfigPath())
	localConfig := loadConfig(getLocalConfigPath())

	effective := &Config{
		OutputDir:      globalConfig.OutputDir,
		Target:         globalConfig.Target,
		EmbeddingModel: globalConfig.EmbeddingModel,
	}

	if localConfig.OutputDir != "" {
		effective.OutputDir = localConfig.OutputDir
	}
	if localConfig.Target != "" {
		effective.Target = localConfig.Target
	}
	if localConfig.EmbeddingModel != "" {
		effective.EmbeddingModel = localConfig.EmbeddingModel
	}

	return effective
}

func saveConfig(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

func showConfigWithScope() {
	if local {
		path := getLocalConfigPath()
		fmt.Println("=== Local Configuration ===")
		fmt.Printf("Config file: %s\n\n", path)
		printConfig(loadConfig(path))
	} else if global {
		path := getGlobalConfigPath()
		fmt.Println("=== Global Configuration ===")
		fmt.Printf("Config file: %s\n\n", path)
		printConfig(loadConfig(path))
	} else {
		fmt.Println("=== Effective Configuration ===")
		fmt.Printf("Global: %s\n", getGlobalConfigPath())
		fmt.Printf("Local:  %s\n\n", getLocalConfigPath())
		printConfig(LoadEffectiveConfig())
	}
}

func printConfig(config *Config) {
	if config.OutputDir != "" {
		fmt.Printf("Output dir:      %s\n", config.OutputDir)
	} else {
		fmt.Println("Output dir:      (not set, defaults to ./output)")
	}

	if config.Target != "" {
		fmt.Printf("Target:          %s\n", config.Target)
	} else {
		fmt.Println("Target:          (not set, defaults to all)")
	}

	if config.EmbeddingModel != "" {
		fmt.Printf("Embedding model: %s\n", config.EmbeddingModel)
	} else {
		fmt.Println("Embedding model: (not set, defaults to nomic-embed-text)")
	}
}
