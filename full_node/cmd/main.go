package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strings"

	"github.com/Luismorlan/ledger_in_go/api"
	"github.com/Luismorlan/ledger_in_go/commands"
	"github.com/Luismorlan/ledger_in_go/config"
	"github.com/Luismorlan/ledger_in_go/full_node"
	"github.com/Luismorlan/ledger_in_go/layout"
	"github.com/Luismorlan/ledger_in_go/service"
	"github.com/jroimartin/gocui"
	"google.golang.org/grpc"
)

var (
	port       *string
	configPath *string
	debugMode  *bool
)

func init() {
	port = flag.String("port", "10000", "port to listen to wallets")
	configPath = flag.String("config_path", "full_node/cmd/config.yaml", "path to full node config")
	debugMode = flag.Bool("debug_mode", false, "Using debug mode will disable fancy GUI.")
}

// Parse command from stdio.
func ParseCommand(cmd chan commands.Command) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		text, err := reader.ReadString('\n')
		if err != nil {
			log.Println("stdin closed, console disabled")
			return
		}
		// convert CRLF to LF
		text = strings.TrimRight(text, "\r\n")
		c, err := commands.CreateCommand(text)
		if err != nil {
			log.Println(err)
			continue
		}
		cmd <- c
	}
}

// Return a gui handle if not in debug mode.
func ListenOnInput(cmd chan commands.Command, debugMode bool) *gocui.Gui {
	if debugMode {
		go ParseCommand(cmd)
		return nil
	}
	g, err := layout.CreateGui(cmd, "full_node/cmd/usage.txt")
	if err != nil {
		log.Fatalln(err)
	}
	go func() {
		if err := g.MainLoop(); err != nil {
			g.Close()
			if err == gocui.ErrQuit {
				os.Exit(0)
			}
			os.Exit(1)
		}
	}()
	return g
}

func HandleCommand(cmd chan commands.Command, node *full_node.FullNode, g *gocui.Gui) {
	for c := range cmd {
		out, err := node.RunCommand(c)
		if err != nil {
			layout.Log(g, "command failed: "+err.Error())
			continue
		}
		layout.Log(g, out)
	}
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalln(err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf("localhost:%s", *port))
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	server, err := full_node.NewFullNodeServer(cfg)
	if err != nil {
		log.Fatalln(err)
	}
	defer server.FullNode().Close()

	grpcServer := grpc.NewServer()
	service.RegisterFullNodeServiceServer(grpcServer, server)

	if cfg.HTTP_ADDR != "" {
		router := api.NewRouter(server.FullNode())
		go func() {
			if err := router.Run(cfg.HTTP_ADDR); err != nil {
				log.Println("explorer API stopped:", err)
			}
		}()
	}

	cmd := make(chan commands.Command)
	g := ListenOnInput(cmd, *debugMode)
	go HandleCommand(cmd, server.FullNode(), g)

	layout.Log(g, fmt.Sprintf("node %s serving wallets at port %s", server.FullNode().ID(), *port))
	if err := grpcServer.Serve(lis); err != nil {
		log.Fatalln(err)
	}
}
