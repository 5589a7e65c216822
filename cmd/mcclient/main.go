// Command mcclient drives a single bot session against a Minecraft
// server: a handshake followed by either a status ping or the start of
// a full login.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"go.uber.org/zap"

	"github.com/mcclient/mcclient/internal/logging"
	"github.com/mcclient/mcclient/mcclient"
	"github.com/mcclient/mcclient/mctypes"
)

const protocolVersion = 773

func main() {
	addr := flag.String("addr", "localhost:25565", "server address")
	name := flag.String("name", "mcclient", "bot username (offline mode)")
	statusOnly := flag.Bool("status", false, "ping for the server status and exit")
	flag.Parse()

	log := logging.New()
	defer log.Sync()

	conn, err := mcclient.Dial(*addr, mcclient.WithLogger(log))
	if err != nil {
		fmt.Fprintln(os.Stderr, "dial:", err)
		os.Exit(1)
	}
	defer conn.Close()

	intent := mctypes.IntentLogin
	if *statusOnly {
		intent = mctypes.IntentStatus
	}

	host, port := splitHostPort(*addr)
	if err := conn.Send("Handshake", mcclient.HandshakePacket{
		ProtocolVersion: protocolVersion,
		ServerAddress:   host,
		ServerPort:      port,
		Intent:          intent,
	}); err != nil {
		log.Fatalw("handshake failed", "error", err)
	}

	if *statusOnly {
		runStatus(conn, log)
		return
	}

	runLogin(conn, log, *name)
}

func runStatus(conn *mcclient.Connection, log *zap.SugaredLogger) {
	conn.SetPhase(mcclient.PhaseStatus)
	if err := conn.Send("StatusRequest", mcclient.StatusRequestPacket{}); err != nil {
		log.Fatalw("status request failed", "error", err)
	}
	pkt, err := conn.Recv()
	if err != nil {
		log.Fatalw("status response failed", "error", err)
	}
	resp, ok := pkt.Payload.(mcclient.StatusResponsePacket)
	if !ok {
		log.Fatalw("unexpected response to status request", "packet", pkt.Name)
	}
	log.Infow("status", "response", resp.JSONResponse)
}

// runLogin performs the handshake's login-phase follow-up and hands
// control back. A scripted bot session (configuration handling, play
// loop, keep alive reflection) belongs in a package built on top of
// mcclient, not in this CLI — this command only proves out the
// connection.
func runLogin(conn *mcclient.Connection, log *zap.SugaredLogger, name string) {
	conn.SetPhase(mcclient.PhaseLogin)
	if err := conn.Send("LoginStart", mcclient.LoginStartPacket{Name: name}); err != nil {
		log.Fatalw("login start failed", "error", err)
	}
	log.Infow("login start sent", "name", name)
}

func splitHostPort(addr string) (string, uint16) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 25565
	}
	var port uint16
	fmt.Sscanf(portStr, "%d", &port)
	return host, port
}
