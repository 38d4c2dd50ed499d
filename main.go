package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/flowmap/flowmap/agent"
	"github.com/flowmap/flowmap/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type cfg struct {
	config.Config
}
type cli struct {
	cfg cfg
}

func setupFlags(cmd *cobra.Command) error {
	cmd.Flags().String("config-file", "", "Path to config file.")
	cmd.Flags().Int("http-port", 8080, "http port for rest endpoints")
	cmd.Flags().String("host-url", "http://localhost:8055", "base url of the host item api")
	cmd.Flags().String("host-token", "", "static token for the host item api")
	cmd.Flags().String("redis-addr", "localhost:6379", "comma separated list of redis host:port")
	cmd.Flags().String("namespace", "flowmap", "namespace used in draft storage")
	cmd.Flags().String("draft-store-impl", "memory", "implementation of the draft store")
	cmd.Flags().String("workflow-collection", "process_workflows", "host collection holding workflow records")
	cmd.Flags().String("program-collection", "programs", "host collection holding programs")
	cmd.Flags().String("default-edge-type", "bezier", "edge type for new connections")
	cmd.Flags().String("default-node-size", "medium", "node size for dropped nodes")
	cmd.Flags().String("theme", "glass-modern", "theme preset for new sessions")
	cmd.Flags().Int("autosave-seconds", 5, "seconds between draft autosave flushes")
	return viper.BindPFlags(cmd.Flags())
}

func (c *cli) setupConfig(cmd *cobra.Command, args []string) error {
	var err error

	configFile, err := cmd.Flags().GetString("config-file")
	if err != nil {
		return err
	}
	viper.SetConfigFile(configFile)

	if err = viper.ReadInConfig(); err != nil {
		// it's ok if config file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	c.cfg.HttpPort = viper.GetInt("http-port")
	c.cfg.HostConfig.BaseUrl = viper.GetString("host-url")
	c.cfg.HostConfig.StaticToken = viper.GetString("host-token")
	c.cfg.RedisConfig.Addrs = strings.Split(viper.GetString("redis-addr"), ",")
	c.cfg.RedisConfig.Namespace = viper.GetString("namespace")
	c.cfg.DraftStoreType = config.DraftStoreType(viper.GetString("draft-store-impl"))
	c.cfg.WorkflowCollection = viper.GetString("workflow-collection")
	c.cfg.ProgramCollection = viper.GetString("program-collection")
	c.cfg.DefaultEdgeType = viper.GetString("default-edge-type")
	c.cfg.DefaultNodeSize = viper.GetString("default-node-size")
	c.cfg.ThemeId = viper.GetString("theme")
	c.cfg.AutosaveSeconds = viper.GetInt("autosave-seconds")
	return nil
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	var err error
	agent, err := agent.New(c.cfg.Config)
	if err != nil {
		panic(err)
	}
	err = agent.Start()
	if err != nil {
		panic(err)
	}
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	return agent.Shutdown()
}

func main() {
	cli := &cli{}

	cmd := &cobra.Command{
		Use:     "flowmap",
		PreRunE: cli.setupConfig,
		RunE:    cli.run,
	}

	if err := setupFlags(cmd); err != nil {
		log.Fatal(err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
