// Command chunkctl exercises and inspects chunkpool chains.
package main

func main() {
	execute()
}
